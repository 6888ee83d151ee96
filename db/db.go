package db

import (
	"os"

	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.LogError(err, "Warning: impossible de charger le fichier .env")
		utils.LogInfo("La variable DB_URL doit être définie dans l'environnement système")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		utils.LogError(nil, "Variable DB_URL non définie")
		panic("URL de base de données non configurée")
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: utils.GetGormLogger(),
	})
	if err != nil {
		utils.LogError(err, "Erreur de connexion à la base de données")
		panic("Could not connect to the database")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Report{},
		&models.PrivateMessage{},
		&models.CreatorApplication{},
		&models.Subscription{},
		&models.Follow{},
	)
	if err != nil {
		utils.LogError(err, "Erreur de migration de la base de données")
		panic("Could not migrate database")
	}

	utils.LogSuccess("Connexion à la base de données établie")
}
