// Command token mints a device key for an account, signed with the same
// secret the mirror server verifies with.
//
//	token -u alice -s secret -t 720
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/lifedash/internal/flagx"
	"github.com/dmitrijs2005/lifedash/internal/server/auth"
	"github.com/dmitrijs2005/lifedash/internal/server/config"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	account := fs.String("u", "", "account the key is issued for")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-u"})); err != nil {
		log.Fatalf("%v", err)
	}

	key, err := auth.GenerateToken(*account, []byte(cfg.SecretKey), cfg.KeyValidity)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(key)
}
