package hardware

import (
	"runtime"

	"github.com/pbnjay/memory"
	"github.com/shirou/gopsutil/cpu"
)

func GetNumberCpus() uint64 {
	return uint64(runtime.NumCPU())
}

func GetCpuModel() string {
	info, err := cpu.Info()
	if err != nil || len(info) == 0 {
		return "not detected"
	}

	return info[0].ModelName
}

func GetTotalMemory() uint64 {
	return memory.TotalMemory()
}

func GetAvailableMemory() uint64 {
	return memory.FreeMemory()
}
