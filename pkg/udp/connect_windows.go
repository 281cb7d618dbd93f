//go:build windows

package udp

import "syscall"

func getsockname(fd uintptr) (syscall.Sockaddr, error) {
	return syscall.Getsockname(syscall.Handle(fd))
}

func connectFD(fd uintptr, sa syscall.Sockaddr) error {
	return syscall.Connect(syscall.Handle(fd), sa)
}
