package device

import (
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

// HostInfo names the machine a model was trained or served on.
type HostInfo struct {
	OS  string `json:"os"`
	CPU string `json:"cpu"`
}

// DescribeHost reports the operating system and CPU model. Lookups that fail
// are reported as unknown.
func DescribeHost() HostInfo {
	info := HostInfo{OS: "Unknown OS", CPU: "Unknown CPU"}
	if h, err := host.Info(); err == nil && h != nil {
		if name := strings.TrimSpace(h.OS + " " + h.Platform); name != "" {
			info.OS = name
		}
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 && cpus[0].ModelName != "" {
		info.CPU = cpus[0].ModelName
	}
	return info
}
