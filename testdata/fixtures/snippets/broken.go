package broken

func main( {
	x := 1
}
