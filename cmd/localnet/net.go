package main

import (
	"fmt"
	"net"
	"strconv"
)

// clientURLs lists the endpoints a client can put in IOTA_RPC_URL to reach a
// node listening on addr. A wildcard listener is reachable on every address
// of every interface that is up.
func clientURLs(addr net.Addr, scheme string) ([]string, error) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("listener is not TCP: %v", addr)
	}
	port := strconv.Itoa(tcpAddr.Port)
	format := func(ip net.IP) string {
		return scheme + "://" + net.JoinHostPort(ip.String(), port)
	}
	if ip := tcpAddr.IP; ip != nil && !ip.IsUnspecified() {
		return []string{format(ip)}, nil
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	v4only := tcpAddr.IP != nil && tcpAddr.IP.To4() != nil
	var urls []string
	for _, ifi := range ifaces {
		if ifi.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := ifi.Addrs()
		for _, a := range addrs {
			var ip net.IP
			switch v := a.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			default:
				continue
			}
			// link-local addresses need a zone to be dialled
			if ip.IsLinkLocalUnicast() || (v4only && ip.To4() == nil) {
				continue
			}
			urls = append(urls, format(ip))
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no interface address for %v", addr)
	}
	return urls, nil
}

// splitHostPort splits an address into host and port, using defaultPort if no port is specified.
func splitHostPort(addr string, defaultPort int) (string, string, error) {
	ipaddr, port, err := net.SplitHostPort(addr)
	if err != nil {
		addr = addr + ":" + strconv.Itoa(defaultPort)
		ipaddr, port, err = net.SplitHostPort(addr)
		if err != nil {
			return "", "", err
		}
	}
	return ipaddr, port, nil
}
