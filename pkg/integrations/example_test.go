package integrations_test

import (
	"fmt"

	"github.com/matzehuels/penpath/pkg/integrations"
)

func ExampleURLEncode() {
	fmt.Println(integrations.URLEncode("13.37,52.51,13.38,52.52"))
	// Output:
	// 13.37%2C52.51%2C13.38%2C52.52
}
