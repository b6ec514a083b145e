// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"

	"logseries/cmd"
)

// profileEnv names the directory cpu.prof and mem.prof are written to
const profileEnv = "LOGSERIES_PROFILE"

func main() {
	if dir := os.Getenv(profileEnv); dir != "" {
		stop, err := startProfiling(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: profiling: %v\n", err)
			os.Exit(1)
		}
		defer stop()
	}
	cmd.Execute()
}

// startProfiling starts the CPU profile. The returned func stops it and
// writes the heap profile.
func startProfiling(dir string) (func(), error) {
	cpuFile, err := os.Create(filepath.Join(dir, "cpu.prof"))
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		cpuFile.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		cpuFile.Close()
		memFile, err := os.Create(filepath.Join(dir, "mem.prof"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: heap profile: %v\n", err)
			return
		}
		defer memFile.Close()
		if err := pprof.WriteHeapProfile(memFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: heap profile: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "profiles written to %s, inspect with 'go tool pprof'\n", dir)
	}, nil
}
