// Package script composes the Python deployment script for an on-device
// speech recognition model. Compose is a pure function of Config: it performs
// no I/O, holds no state, and is safe to call from any goroutine.
//
// Typical use:
//
//	cfg := script.Default().WithMode(script.ModeRealtime)
//	doc := script.Render(cfg)
//	fmt.Println(doc.Filename)
//	fmt.Print(doc.Body)
package script
