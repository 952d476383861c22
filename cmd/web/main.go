// @title           NextMatch API
// @version         1.0
// @description     Dating platform backend: profiles, likes, messaging and realtime notifications.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "github.com/Juantrevi/next-match/internal/app"

func main() {
	app.Run()
}
