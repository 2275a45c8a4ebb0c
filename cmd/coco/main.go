// Command coco runs the windowed Dragon/CoCo host.
package main

func main() {
	Execute()
}
