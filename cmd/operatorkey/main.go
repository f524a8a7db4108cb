// Command operatorkey prints the bcrypt hash of an operator key for use as
// OPERATOR_KEY_HASH. The key is read from the first line of stdin.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/beka-birhanu/vinom-nav/config"
	"github.com/beka-birhanu/vinom-nav/identity"
)

func main() {
	logger := log.New(os.Stderr, config.ColorMagenta+"[OPERATOR-KEY]"+config.ColorReset+" ", 0)

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			logger.Fatalf("%s[ERROR]%s reading key: %v", config.LogErrorColor, config.LogColorReset, err)
		}
		logger.Fatalf("%s[ERROR]%s no key on stdin", config.LogErrorColor, config.LogColorReset)
	}

	hash, err := identity.HashKey(strings.TrimSpace(scanner.Text()))
	if err != nil {
		logger.Fatalf("%s[ERROR]%s %v", config.LogErrorColor, config.LogColorReset, err)
	}
	fmt.Println(hash)
}
