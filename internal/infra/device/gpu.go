package device

import (
	"fmt"
	"os"
	"strings"
)

const nvidiaDriverPath = "/proc/driver/nvidia/version"

// DetectGPU resolves the configured GPU mode: "true" and "false" force the
// answer, "auto" (or empty) looks for a loaded NVIDIA driver.
func DetectGPU(mode string) (bool, error) {
	return detect(mode, nvidiaDriverPath)
}

func detect(mode, probePath string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		_, err := os.Stat(probePath)
		return err == nil, nil
	case "true", "on", "1":
		return true, nil
	case "false", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("unknown gpu mode %q", mode)
	}
}
