// Command cocorun drives the core headlessly for scripted conformance
// runs: no window, no real-time input, deterministic tick counts.
package main

func main() {
	Execute()
}
