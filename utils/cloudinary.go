package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var cld *cloudinary.Cloudinary

// InitCloudinary initialise la connexion à Cloudinary et vérifie qu'elle
// répond avant de rendre la main
func InitCloudinary() error {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return fmt.Errorf("les variables d'environnement Cloudinary ne sont pas définies")
	}

	var err error
	cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return fmt.Errorf("erreur lors de l'initialisation de Cloudinary: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err = cld.Admin.Ping(ctx); err != nil {
		return fmt.Errorf("erreur lors de la vérification de la connexion à Cloudinary: %v", err)
	}

	LogSuccess("Cloudinary initialisé avec succès")
	return nil
}

func boolPointer(b bool) *bool {
	return &b
}

var validMediaExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".mp4", ".mov", ".webm"}

func isValidMediaType(filename string) bool {
	lowerFilename := strings.ToLower(filename)
	for _, ext := range validMediaExtensions {
		if strings.HasSuffix(lowerFilename, ext) {
			return true
		}
	}
	return false
}

// UploadMedia télécharge un fichier média vers Cloudinary dans le dossier
// donné et retourne son URL sécurisée
func UploadMedia(file *multipart.FileHeader, folder string, prefix string) (string, error) {
	if !isValidMediaType(file.Filename) {
		return "", fmt.Errorf("format de média non supporté")
	}

	// 25MB max, les vidéos longues passent par un autre canal
	if file.Size > 25*1024*1024 {
		return "", fmt.Errorf("fichier trop volumineux, maximum 25MB")
	}

	if cld == nil {
		if err := InitCloudinary(); err != nil {
			return "", err
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("erreur lors de l'ouverture du fichier: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s_%d", prefix, time.Now().Unix())

	uploadResult, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		UseFilename:    boolPointer(true),
		UniqueFilename: boolPointer(true),
		Overwrite:      boolPointer(false),
		ResourceType:   "auto",
	})
	if err != nil {
		return "", fmt.Errorf("erreur lors du téléchargement vers Cloudinary: %v", err)
	}

	if uploadResult.SecureURL == "" {
		return "", fmt.Errorf("URL sécurisée vide dans la réponse de Cloudinary")
	}

	return uploadResult.SecureURL, nil
}
