package state

// Apply returns the state that results from applying a to s. It never
// mutates s and never fails: an action whose precondition does not hold
// returns s unchanged.
func Apply(s State, a Action) State {
	next, _ := reduce(s, a)
	return next
}

// reduce is Apply plus a flag telling whether a took effect.
func reduce(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case SetTool:
		if !a.Tool.Valid() {
			return s, false
		}
		s.Tool = a.Tool
		return s, true

	case SetColor:
		s.Color = a.Color
		return s, true

	case SetBrushSize:
		if a.Size < MinBrushSize || a.Size > MaxBrushSize {
			return s, false
		}
		s.BrushSize = a.Size
		return s, true

	case SetBrushOpacity:
		if a.Opacity < MinBrushOpacity || a.Opacity > MaxBrushOpacity {
			return s, false
		}
		s.BrushOpacity = a.Opacity
		return s, true

	case SetBrushHardness:
		if a.Hardness < MinBrushHardness || a.Hardness > MaxBrushHardness {
			return s, false
		}
		s.BrushHardness = a.Hardness
		return s, true

	case StartDrawing:
		// fill never produces a path.
		if s.Tool == ToolFill || !s.Tool.Valid() {
			return s, false
		}
		s.Current = &Path{
			ID:          a.ID,
			D:           a.D,
			Stroke:      s.strokeColor(),
			StrokeWidth: s.strokeWidth(),
			Opacity:     s.BrushOpacity,
		}
		return s, true

	case Drawing:
		if s.Current == nil {
			return s, false
		}
		cur := *s.Current
		cur.D = a.D
		s.Current = &cur
		return s, true

	case EndDrawing:
		if s.Current == nil {
			return s, false
		}
		// The snapshot is taken before the append: it is what undo restores.
		snapshot := clonePaths(s.Paths)
		paths := make([]Path, len(s.Paths), len(s.Paths)+1)
		copy(paths, s.Paths)
		s.Paths = append(paths, *s.Current)
		history := make([][]Path, len(s.History), len(s.History)+1)
		copy(history, s.History)
		s.History = append(history, snapshot)
		s.Current = nil
		return s, true

	case Undo:
		if len(s.History) == 0 {
			return s, false
		}
		last := len(s.History) - 1
		s.Paths = clonePaths(s.History[last])
		s.History = s.History[:last:last]
		s.Current = nil
		return s, true

	case Clear:
		s.Paths = []Path{}
		s.History = nil
		s.Current = nil
		return s, true

	case Redo:
		return s, false

	default:
		return s, false
	}
}
