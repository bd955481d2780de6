package main

import "github.com/marklab/annotator/cmd"

// @title           Video Annotator API
// @version         1.0.0
// @description     A segment annotation API for video review
// @termsOfService  http://swagger.io/terms/
// @contact.name    API Support
// @contact.url     https://github.com/marklab/annotator
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
