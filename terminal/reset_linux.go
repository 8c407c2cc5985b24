package terminal

import (
	"os"

	"golang.org/x/sys/unix"
)

// resetTerminalMode re-enables line discipline through /dev/tty,
// which works even when stdin is redirected
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if termios, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
		termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		termios.Iflag |= unix.ICRNL
		unix.IoctlSetTermios(fd, unix.TCSETS, termios)
	}
}
