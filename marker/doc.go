// Package marker finds user code regions delimited by marker comments.
//
// A region looks like
//
//	/* USER CODE BEGIN Init */
//	  ...
//	/* USER CODE END Init */
//
// The text after BEGIN or END up to the closing delimiter is the tag,
// trimmed of surrounding space.
//
// # Usage
//
//	var diags []marker.Diagnostic
//	for sp, err := range marker.Scan(src, marker.CollectDiagnostics(&diags)) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%s: %s\n", sp.Tag, sp.Bytes(src))
//	}
//
// # Related Packages
//
//   - github.com/signadot/grovel/splice - Replace spans by tag
//   - github.com/signadot/grovel/snipfile - Companion snippet files
package marker
