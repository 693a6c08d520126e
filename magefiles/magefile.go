//go:build mage

// Package main contains Mage build targets for screener developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "screener"
	cmdPkg     = "./cmd/screener"
	sampleFile = "testdata/stock_list.csv"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Sample writes a small fundamentals table for trying the screener.
func Sample() error {
	if err := os.MkdirAll(filepath.Dir(sampleFile), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(sampleFile, []byte(sampleCSV), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", sampleFile, err)
	}
	fmt.Println("Wrote", sampleFile)
	return nil
}

// Demo screens the sample table under every strategy.
func Demo() error {
	mg.Deps(Build, Sample)
	bin := filepath.Join(binDir, binName)
	for _, strategy := range []string{"student-high-yield", "undervalued-growth", "buyout-liquidation"} {
		fmt.Printf("\n== %s ==\n", strategy)
		if err := sh.RunV(bin, "screen", "--strategy", strategy, sampleFile); err != nil {
			return err
		}
	}
	return nil
}

const sampleCSV = `code,name,industry,price,market_cap,per,pbr,roe,dividend_yield,cash,debt,revenue_growth
7201,Coastal Machinery,Machinery,400,3000000000,8.5,0.8,6.2,5.0,500000000,0,0.05
8093,Kitano Trading,Wholesale,900,1000000000,6.2,0.45,9.1,3.5,600000000,100000000,0.12
3547,Hoshi Software,Information & Communication,1850,12000000000,14.0,2.1,18.5,1.2,4000000000,500000000,0.41
9412,Minato Logistics,Transportation,620,5200000000,11.3,0.7,5.5,4.4,900000000,2600000000,0.02
6240,Ueda Precision,Electric Appliances,310,2400000000,7.9,0.38,4.8,6.1,2600000000,200000000,0.08
`

// Stats prints project metrics: Go production and test line counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines counts non-blank lines in Go files under root, skipping
// directories whose names start with "_" or ".".
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				total++
			}
		}
		return sc.Err()
	})
	return total, err
}
