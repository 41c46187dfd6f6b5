// compileinfoprint is imported for the side effect of printing the compileinfo
// to os.Stderr when the program starts.
package compileinfoprint

import (
	"os"

	"github.com/carbocation/freyjasummary/compileinfo"
)

func init() {
	compileinfo.Fprint(os.Stderr)
}
