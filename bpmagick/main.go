package main

import (
	"fmt"
	"os"
	"strings"

	"gni.dev/bpmagick/internal/convert"
)

func main() {
	if len(os.Args) < 2 {
		convert.RunT32(nil)
		return
	}

	switch cmd := os.Args[1]; {
	case cmd == "t32":
		convert.RunT32(os.Args[2:])
	case cmd == "list":
		convert.RunList(os.Args[2:])
	case strings.HasPrefix(cmd, "-"):
		convert.RunT32(os.Args[1:])
	default:
		fmt.Fprintln(os.Stderr, "Unknown command:", os.Args[1])
		fmt.Fprintln(os.Stderr, "Usage: bpmagick [t32|list] [flags]")
		os.Exit(1)
	}
}
