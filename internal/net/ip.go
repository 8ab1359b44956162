package net

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// Port returns the numeric port of a listen address such as ":8888".
func Port(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("parse address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("parse port %q: %w", p, err)
	}
	return port, nil
}

// ShareURL is the address observers on the LAN open to watch a mirror
// listening on addr.
func ShareURL(addr string) (string, error) {
	port, err := Port(addr)
	if err != nil {
		return "", err
	}
	ip, err := localIP()
	if err != nil {
		return "", fmt.Errorf("share link: %w", err)
	}
	return "http://" + net.JoinHostPort(ip.String(), strconv.Itoa(port)) + "/canvas.svg", nil
}

// localIP picks the source address of the default route. Without a route,
// as on an offline LAN, it takes the first non-loopback IPv4 interface
// address.
func localIP() (net.IP, error) {
	// UDP dial sends nothing; it only resolves the route.
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		return conn.LocalAddr().(*net.UDPAddr).IP, nil
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, fmt.Errorf("list interface addresses: %w", err)
	}
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP, nil
		}
	}
	return nil, errors.New("no non-loopback IPv4 address")
}
