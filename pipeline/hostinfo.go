// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"gopkg.in/yaml.v3"
)

// HostInfoSuffix is appended to the name of a file result set to name
// its host description.
const HostInfoSuffix = ".host.yaml"

// HostInfo describes the machine and solver that produced a result
// set. Run times are only comparable between sets with matching host
// descriptions.
type HostInfo struct {
	Started  time.Time `yaml:"started"`
	Hostname string    `yaml:"hostname,omitempty"`
	OS       string    `yaml:"os,omitempty"`
	Platform string    `yaml:"platform,omitempty"`
	Kernel   string    `yaml:"kernel,omitempty"`
	CPU      string    `yaml:"cpu,omitempty"`
	Cores    int       `yaml:"cores,omitempty"`
	MemTotal uint64    `yaml:"mem_total,omitempty"`

	Solver   string        `yaml:"solver"`
	Profiler string        `yaml:"profiler,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// CollectHostInfo describes the current machine. Facts that can't be
// determined are left empty.
func CollectHostInfo() *HostInfo {
	hi := &HostInfo{Started: time.Now().UTC().Truncate(time.Second)}
	if h, err := host.Info(); err == nil {
		hi.Hostname = h.Hostname
		hi.OS = h.OS
		hi.Platform = h.Platform + " " + h.PlatformVersion
		hi.Kernel = h.KernelVersion
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		hi.CPU = cpus[0].ModelName
		for _, c := range cpus {
			hi.Cores += int(c.Cores)
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		hi.MemTotal = vm.Total
	}
	return hi
}

// WriteFile writes hi as YAML to path.
func (hi *HostInfo) WriteFile(path string) error {
	data, err := yaml.Marshal(hi)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0666)
}

// ReadHostInfo reads a host description written by WriteFile.
func ReadHostInfo(path string) (*HostInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	hi := new(HostInfo)
	if err := yaml.Unmarshal(data, hi); err != nil {
		return nil, err
	}
	return hi, nil
}
