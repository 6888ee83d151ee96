package subscriptions

import (
	"errors"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"

	"gorm.io/gorm"
)

// GetFollowSubscription retourne la relation entre un abonné et un créateur,
// telle quelle : l'appelant recalcule le statut effectif via EffectiveStatus.
// Retourne nil sans erreur quand l'appelant n'est pas authentifié ou qu'il
// n'y a pas de relation ; NotFound si le créateur n'existe pas.
func GetFollowSubscription(creatorID, subscriberID string) (*models.Subscription, error) {
	if subscriberID == "" {
		return nil, nil
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Creator not found")
		}
		return nil, apperrors.Internal(err, "Error resolving creator")
	}

	return GetByPair(creatorID, subscriberID, models.ServiceTypeFollow)
}

// CanUserSubscribe vérifie les règles d'éligibilité à l'abonnement.
// Règles métier pures, aucune écriture.
func CanUserSubscribe(creatorID, subscriberID string) error {
	if subscriberID == "" {
		return apperrors.Unauthenticated("User not authenticated")
	}
	if creatorID == subscriberID {
		return apperrors.InvalidState("You cannot subscribe to yourself")
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Creator not found")
		}
		return apperrors.Internal(err, "Error resolving creator")
	}

	if creator.Role != models.CreatorRole {
		return apperrors.InvalidState("You can only subscribe to a content creator")
	}
	if !creator.Enable || !creator.SubscriptionEnable {
		return apperrors.InvalidState("This creator does not accept subscriptions")
	}

	return nil
}
