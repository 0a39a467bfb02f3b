package system

import (
	"errors"
	"net"
	"strconv"
)

var errNoAddress = errors.New("no non-loopback ipv4 address")

// LocalIPv4 returns the first IPv4 address of an interface that is up and
// not a loopback.
func LocalIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ip := ipv4Of(a); ip != "" {
				return ip, nil
			}
		}
	}
	return "", errNoAddress
}

func ipv4Of(a net.Addr) string {
	var ip net.IP
	switch v := a.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	}
	if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
		return ip4.String()
	}
	return ""
}

// PreviewURL builds the address a phone on the same network can open.
// listenAddr is a server address such as ":80" or "0.0.0.0:8080". A host in
// listenAddr wins over ip unless it is a wildcard.
func PreviewURL(listenAddr, ip string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return ""
	}
	if host != "" && host != "0.0.0.0" && host != "::" {
		ip = host
	}
	if ip == "" {
		return ""
	}
	if port == "80" || port == "" {
		return "http://" + hostForURL(ip) + "/"
	}
	if _, err := strconv.Atoi(port); err != nil {
		return ""
	}
	return "http://" + net.JoinHostPort(ip, port) + "/"
}

func hostForURL(host string) string {
	if ip := net.ParseIP(host); ip != nil && ip.To4() == nil {
		return "[" + host + "]"
	}
	return host
}
