package udp

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

var errFamilyMismatch = errors.New("destination address family does not match the bound socket")

// connect associates an already bound socket with raddr, the way connect(2)
// does for datagram sockets. net.ListenUDP gives no way to do this after the
// fact, so the raw descriptor is used.
func connect(conn *net.UDPConn, raddr *net.UDPAddr) error {
	rc, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var opErr error
	err = rc.Control(func(fd uintptr) {
		local, err := getsockname(fd)
		if err != nil {
			opErr = err
			return
		}
		sa, err := sockaddr(local, raddr)
		if err != nil {
			opErr = err
			return
		}
		opErr = connectFD(fd, sa)
	})
	if err != nil {
		return err
	}
	if opErr != nil {
		return fmt.Errorf("connect %s: %w", raddr, opErr)
	}
	return nil
}

// sockaddr converts raddr to the family of the bound socket. IPv4
// destinations are mapped into IPv6 for dual-stack sockets.
func sockaddr(local syscall.Sockaddr, raddr *net.UDPAddr) (syscall.Sockaddr, error) {
	switch local.(type) {
	case *syscall.SockaddrInet4:
		ip4 := raddr.IP.To4()
		if ip4 == nil {
			if raddr.IP != nil && !raddr.IP.IsUnspecified() {
				return nil, errFamilyMismatch
			}
			ip4 = net.IPv4(127, 0, 0, 1).To4()
		}
		sa := &syscall.SockaddrInet4{Port: raddr.Port}
		copy(sa.Addr[:], ip4)
		return sa, nil

	case *syscall.SockaddrInet6:
		ip := raddr.IP
		if ip == nil || ip.IsUnspecified() {
			ip = net.IPv6loopback
		}
		sa := &syscall.SockaddrInet6{Port: raddr.Port}
		copy(sa.Addr[:], ip.To16())
		if raddr.Zone != "" {
			ifi, err := net.InterfaceByName(raddr.Zone)
			if err != nil {
				return nil, err
			}
			sa.ZoneId = uint32(ifi.Index)
		}
		return sa, nil

	default:
		return nil, fmt.Errorf("unsupported socket address %T", local)
	}
}
