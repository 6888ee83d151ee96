package main

import (
	"context"
	"log"

	"github.com/RinKhimera/onlyscam-sub000/db"
	_ "github.com/RinKhimera/onlyscam-sub000/docs"
	"github.com/RinKhimera/onlyscam-sub000/routes"
	"github.com/RinKhimera/onlyscam-sub000/utils"
	"github.com/RinKhimera/onlyscam-sub000/workers"

	"github.com/gin-gonic/gin"
)

// @title API OnlyScam
// @version 1.0
// @description API de la plateforme d'abonnement aux créateurs de contenu
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Entrez le JWT avec le préfixe Bearer: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Avertissement: l'initialisation de Cloudinary a échoué: %v", err)
		log.Println("Le téléchargement de médias ne fonctionnera pas correctement.")
	}

	// Sweep quotidien qui rattrape le statut persisté des abonnements expirés
	workers.StartExpirationWorker(context.Background())

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Erreur lors du démarrage du serveur:", err)
	}
}
