//	@title			Post API
//	@version		1.0
//	@description	Create, list, update and delete user owned text posts.

//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token, e.g. "Bearer eyJhbGciOi..."

//	@tag.name			posts
//	@tag.description	Post management operations

//	@tag.name			health
//	@tag.description	Operational endpoints for monitoring and health

package main

import (
	"fmt"
	"os"

	"github.com/MicroServices-SocialApp/Post-API/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
