package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/render/nodelink"
)

func ExampleToDOT() {
	lay, _ := diagram.AgenticLoop().Layout()
	dot := nodelink.ToDOT(lay, nodelink.Options{Scale: 1})

	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") && !strings.Contains(line, "dotted") {
			fmt.Println(strings.TrimSpace(line[:strings.Index(line, "[")]))
		}
	}
	// Output:
	// "Perceive" -> "Analyze"
	// "Analyze" -> "Decide"
	// "Decide" -> "Act"
	// "Act" -> "Perceive"
}
