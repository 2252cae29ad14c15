// Command threadctl renders, imports and inspects threaded comment files.
package main

func main() {
	execute()
}
