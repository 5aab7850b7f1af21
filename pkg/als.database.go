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

package pkg

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
	DATABASE CLIENT

ALL DATABASES IN THE ALS ARE ACCESSED VIA A DBClient
*/
type DBClient struct {
	ConnStr string
	*gorm.DB

	/* WAIT GROUP USED TO PREVENT DISCONNECTION WHILE WRITES ARE PENDING */
	WG *sync.WaitGroup
}

func (dbc *DBClient) GetDBName() string {
	str := strings.Split(dbc.ConnStr, "/")
	if len(str) == 4 {
		/* THIS IS A VALID CONNECTION STRING */
		return str[3]
	} else {
		return ""
	}
}

func (dbc *DBClient) Connect() (err error) {

	if dbc.DB, err = gorm.Open(postgres.Open(dbc.ConnStr), &gorm.Config{}); err != nil {
		return LogErr(err)
	}
	dbc.DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	dbc.DB.Logger = logger.Default.LogMode(logger.Error)
	dbc.WG = &sync.WaitGroup{}

	return err
}
func (dbc *DBClient) Disconnect() (err error) {

	/* ENSURE ALL PENDING WRITES ARE COMPLETE BEFORE DISCONNECTION */
	dbc.WG.Wait()

	db, err := dbc.DB.DB()
	if err != nil {
		return LogErr(err)
	}
	if err = db.Close(); err != nil {
		return LogErr(err)
	}
	dbc = &DBClient{}
	return
}

/*
	ADMIN DATABASE

USED TO MANAGE ALL OTHER DATABASES ON THIS ALS
*/
var ADB ADMINDatabase = ADMINDatabase{DBClient: DBClient{}}

type ADMINDatabase struct{ DBClient }

func (adb ADMINDatabase) CreateDatabase(db_name string) (err error) {
	db_name = strings.ToLower(db_name)
	createDBCommand := fmt.Sprintf(`CREATE DATABASE %s WITH OWNER = datacan
		ENCODING = 'UTF8' LC_COLLATE = 'C.UTF-8' LC_CTYPE = 'C.UTF-8' TABLESPACE = pg_default CONNECTION LIMIT = -1 IS_TEMPLATE = False;`,
		db_name,
	)
	fmt.Printf("\n(adb *ADMINDatabase) CreateDatabase( ): Creating %s...\n", db_name)
	res := adb.DB.Exec(createDBCommand)
	err = res.Error
	return
}
func (adb ADMINDatabase) CheckDatabaseExists(db_name string) (exists bool) {
	db_name = strings.ToLower(db_name)
	checkExistsCommand := `SELECT EXISTS ( SELECT datname FROM pg_catalog.pg_database WHERE datname=? )`
	adb.DB.Raw(checkExistsCommand, db_name).Scan(&exists)
	return
}
func (adb ADMINDatabase) DropDatabase(db_name string) {
	db_name = strings.ToLower(db_name)
	dropDBCommand := fmt.Sprintf(`DROP DATABASE %s WITH (FORCE)`, db_name)
	adb.DB.Exec(dropDBCommand)
}

/*
	ALS DATABASE

MANAGES THE ASSET CORPUS, USERS, DOCUMENT RECORDS AND AUDIT EVENTS
*/
var ALS ALSDatabase = ALSDatabase{DBClient: DBClient{}}

type ALSDatabase struct{ DBClient }

/*
CREATES OR MIGRATES THE ALS USER TABLE

ASSET TABLES ARE CREATED BY assets.CreateAssetTables AFTER CONNECTION
*/
func (als ALSDatabase) CreateALSTables(exists bool) (err error) {

	if exists {
		err = als.DB.AutoMigrate(&User{})
	} else {
		if err = als.DB.Migrator().CreateTable(&User{}); err != nil {
			return err
		}

		/* FIRST BOOT; SEED THE SUPER USER */
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(SPR_PW), bcrypt.DefaultCost)
		newUser := User{
			Name:     SPR_USER,
			Email:    strings.ToLower(SPR_EMAIL),
			Password: string(hashedPassword),
			Role:     ROLE_ADMIN,
		}
		if result := als.DB.Create(&newUser); result.Error != nil {
			fmt.Printf("\nCreate admin user failed...\n%s\n", result.Error.Error())
			err = result.Error
		}
	}

	return err
}
