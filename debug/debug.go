// Package debug holds environment controlled tracing switches.
//
// Each switch is read once at startup from a GROVEL_DEBUG_* variable holding
// any value accepted by strconv.ParseBool.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
)

type debug struct {
	Scan   bool
	Splice bool
	Walk   bool
	Config bool
}

var (
	d *debug

	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Scan = boolEnv("GROVEL_DEBUG_SCAN")
	d.Splice = boolEnv("GROVEL_DEBUG_SPLICE")
	d.Walk = boolEnv("GROVEL_DEBUG_WALK")
	d.Config = boolEnv("GROVEL_DEBUG_CONFIG")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Splice() bool {
	return d.Splice
}
func Walk() bool {
	return d.Walk
}
func Config() bool {
	return d.Config
}

// SetOutput redirects trace output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

// Logf writes a trace line. Maps and slices are rendered as indented JSON and
// byte slices are quoted.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(x, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", x)
				continue
			}
			args[i] = string(d)
		case []byte:
			args[i] = strconv.Quote(string(x))
		}
	}
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, msg, args...)
}
