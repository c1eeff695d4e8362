package core_test

import (
	"fmt"
	"os"

	"github.com/redactyl/baseguard/pkg/core"
)

// ExampleGenerate builds a baseline from an npm audit report.
func ExampleGenerate() {
	snap, err := core.Generate([]string{"../../internal/parser/testdata/npm.json"}, core.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate failed: %v\n", err)
		return
	}
	_ = core.WriteSnapshot(os.Stdout, snap)
	// Output:
	// {
	//   "npm": {
	//     "files": {
	//       "async": {
	//         "high": 1,
	//         "low": 0,
	//         "medium": 0,
	//         "note": 0,
	//         "undefined": 0,
	//         "warning": 0
	//       }
	//     },
	//     "total": {
	//       "high": 1,
	//       "low": 0,
	//       "medium": 0,
	//       "note": 0,
	//       "undefined": 0,
	//       "warning": 0
	//     }
	//   }
	// }
}
