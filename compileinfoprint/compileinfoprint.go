// Package compileinfoprint is imported by the c14misc tools for the side
// effect of printing their build information to stderr at startup.
package compileinfoprint

import "github.com/carbocation/c14misc/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
