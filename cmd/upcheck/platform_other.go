//go:build !linux

package main

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

func checkPrivileges() {
}

func getOSInfo() string {
	info, err := host.Info()
	if err != nil {
		return fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("%s %s (%s)", info.OS, info.PlatformVersion, info.KernelArch)
}
