// Command budgetcharts builds the chart payloads of a budget page from
// operation data and prints, renders or publishes them.
package main

func main() {
	Execute()
}
