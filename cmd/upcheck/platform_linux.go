//go:build linux

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

func getOSInfo() string {
	info, err := host.Info()
	if err != nil {
		log.Debugw("host info unavailable", "error", err)
		return fmt.Sprintf("Linux %s", runtime.GOARCH)
	}
	return fmt.Sprintf("%s %s (kernel %s, %s)", info.Platform, info.PlatformVersion, info.KernelVersion, info.KernelArch)
}

// checkPrivileges warns when run as root: upgrade commands call sudo
// themselves and root-owned lock files would block the user's instances.
func checkPrivileges() {
	if os.Geteuid() == 0 {
		log.Warn("running as root; lock and sync files will be owned by root")
	}
}
