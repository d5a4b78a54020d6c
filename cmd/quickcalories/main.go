// cmd/quickcalories/main.go
package main

func main() {
	Execute()
}
