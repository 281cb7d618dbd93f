//go:build unix

package udp

import "syscall"

func getsockname(fd uintptr) (syscall.Sockaddr, error) {
	return syscall.Getsockname(int(fd))
}

func connectFD(fd uintptr, sa syscall.Sockaddr) error {
	return syscall.Connect(int(fd), sa)
}
