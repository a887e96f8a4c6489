//go:build !unix && !windows

package launch

import "syscall"

func detachedAttr() *syscall.SysProcAttr {
	return nil
}
