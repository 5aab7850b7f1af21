/* Asset Lifecycle Server (ALS) is a component of the Datacan Data2Desk (D2D) Platform.
License:

	[PROPER LEGALESE HERE...]

	INTERIM LICENSE DESCRIPTION:
	In spirit, this license:
	1. Allows <Third Party> to use, modify, and / or distributre this software in perpetuity so long as <Third Party> understands:
		a. The software is porvided as is without guarantee of additional support from DataCan in any form.
		b. The software is porvided as is without guarantee of exclusivity.

	2. Prohibits <Third Party> from taking any action which might interfere with DataCan's right to use, modify and / or distributre this software in perpetuity.
*/

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/leehayford/als/pkg"
	"github.com/leehayford/als/pkg/assets"
)

func main() {

	cfgPath := flag.String("config", "", "Path to an ALS config file ( YAML )")
	cleanDB := flag.Bool("clean", false, "Drop and recreate the ALS database")
	flag.Parse()

	if err := pkg.LoadALSConfig(*cfgPath); err != nil {
		log.Fatal(err)
	}

	/* REFERENCE DATA - MANUFACTURER / MODEL ALIAS TABLES */
	if pkg.ALS_CFG.AliasFile != "" {
		if err := assets.LoadAliasTables(pkg.ALS_CFG.AliasFile); err != nil {
			log.Fatal(err)
		}
	}

	/* ADMIN DB - CONNECT TO THE ADMIN DATABASE */
	pkg.ADB.Connect()
	defer pkg.ADB.Disconnect()

	if *cleanDB {
		pkg.ADB.DropDatabase(pkg.ALS_DB)
	}

	/* CREATE OR MIGRATE ALS DATABASE & CONNECT */
	exists := pkg.ADB.CheckDatabaseExists(pkg.ALS_DB)
	if !exists {
		pkg.ADB.CreateDatabase(pkg.ALS_DB)
	}
	pkg.ALS.Connect()
	defer pkg.ALS.Disconnect()

	/* IF ALS DATABASE DIDN'T ALREADY EXIST, CREATE TABLES, OTHERWISE MIGRATE */
	if err := pkg.ALS.CreateALSTables(exists); err != nil {
		log.Fatal(err)
	}
	if err := assets.CreateAssetTables(); err != nil {
		log.Fatal(err)
	}

	/* MQTT - SUBSCRIBE TO ALL CONFIGURED DISCOVERY SOURCES */
	fmt.Println("\n\nConnecting all discovery source sync clients...")
	if err := assets.SyncSourceClient_ConnectAll(); err != nil {
		pkg.LogErr(err)
	}
	defer assets.SyncSourceClient_DisconnectAll()

	/* MAIN SERVER */
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		/* TODO: LIMIT ALLOWED ORIGINS FOR PRODUCTION DEPLOYMENT */
		AllowOrigins:     "http://localhost:8080, http://localhost:4173, http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Cache-Control",
		AllowMethods:     "GET, POST",
		AllowCredentials: true,
	}))

	/* API ROUTES */
	api := fiber.New()
	app.Mount("/api", api)

	pkg.SetupUserRoutes(api)
	assets.SetupAssetRoutes(api)

	api.All("*", func(c *fiber.Ctx) error {
		path := c.Path()
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("Path: %v does not exists on this server", path),
		})
	})

	log.Fatal(app.Listen(pkg.ALS_CFG.HTTPAddr))
}
