package subscriptions

import (
	"errors"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"gorm.io/gorm"
)

// DefaultSubscriptionPrice prix par défaut en XAF quand le créateur n'a pas
// fixé le sien
const DefaultSubscriptionPrice = 1000

// Nombre de tentatives quand un renouvellement croise un écrivain concurrent
const maxMutationRetries = 3

// FollowOptions options du chemin de paiement : l'id de transaction du
// gateway, la date de début rapportée par celui-ci et le montant encaissé
type FollowOptions struct {
	TransactionID *string
	StartDate     *time.Time
	AmountPaid    int
}

type FollowResult struct {
	SubscriptionID string
	Renewed        bool
	Reactivated    bool
}

// FollowUser crée ou renouvelle l'abonnement de subscriberID vers creatorID.
//
// Un renouvellement repart toujours pour une fenêtre fixe de 30 jours à
// partir de maintenant (ou de la date fournie par le gateway), sans cumul du
// temps restant. Le patch est protégé par un compteur de version : si un
// écrivain concurrent est passé entre la lecture et l'écriture, on relit et
// on recommence.
func FollowUser(subscriberID, creatorID string, opts FollowOptions) (*FollowResult, error) {
	if subscriberID == "" {
		return nil, apperrors.Unauthenticated("User not authenticated")
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Creator not found")
		}
		return nil, apperrors.Internal(err, "Error resolving creator")
	}

	base := timeNow()
	if opts.StartDate != nil {
		base = *opts.StartDate
	}
	endDate := base.Add(models.SubscriptionDuration)

	for attempt := 0; attempt < maxMutationRetries; attempt++ {
		existing, err := GetByPair(creatorID, subscriberID, models.ServiceTypeFollow)
		if err != nil {
			return nil, apperrors.Internal(err, "Error looking up subscription")
		}

		if existing != nil {
			// Renouvellement : extension de la fenêtre, pas de cumul
			reactivated := !existing.IsActive(timeNow())

			fields := map[string]interface{}{
				"end_date":      endDate,
				"status":        models.SubscriptionActive,
				"renewal_count": gorm.Expr("renewal_count + 1"),
			}
			if opts.TransactionID != nil {
				fields["transaction_id"] = *opts.TransactionID
			}
			if opts.AmountPaid > 0 {
				fields["amount_paid"] = opts.AmountPaid
			}

			affected, err := PatchVersioned(existing.ID, existing.Version, fields)
			if duplicateOn(err, "transaction_id") {
				return nil, apperrors.Conflict("Transaction already applied to a subscription")
			}
			if err != nil {
				return nil, apperrors.Internal(err, "Error renewing subscription")
			}
			if affected == 0 {
				// Un autre renouvellement est passé entre notre lecture et
				// notre écriture, on relit l'état courant
				continue
			}

			utils.LogInfo("Abonnement renouvelé")
			return &FollowResult{
				SubscriptionID: existing.ID,
				Renewed:        true,
				Reactivated:    reactivated,
			}, nil
		}

		// Création : l'abonnement et l'arête Follow naissent dans la même
		// transaction pour ne jamais diverger
		amount := opts.AmountPaid
		if amount <= 0 {
			amount = creator.SubscriptionPrice
		}
		if amount <= 0 {
			amount = DefaultSubscriptionPrice
		}

		newSub := models.Subscription{
			SubscriberID:  subscriberID,
			CreatorID:     creatorID,
			ServiceType:   models.ServiceTypeFollow,
			StartDate:     base,
			EndDate:       endDate,
			Status:        models.SubscriptionActive,
			AmountPaid:    amount,
			TransactionID: opts.TransactionID,
		}

		err = db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&newSub).Error; err != nil {
				return err
			}
			follow := models.Follow{
				FollowerID:     subscriberID,
				FollowingID:    creatorID,
				SubscriptionID: newSub.ID,
			}
			return tx.Create(&follow).Error
		})

		if duplicateOn(err, "transaction_id") {
			return nil, apperrors.Conflict("Transaction already applied to a subscription")
		}
		if duplicateOn(err, "idx_sub_pair") {
			// Création concurrente pour le même couple : on repart sur la
			// branche renouvellement
			continue
		}
		if err != nil {
			return nil, apperrors.Internal(err, "Error creating subscription")
		}

		utils.LogInfo("Abonnement créé")
		return &FollowResult{SubscriptionID: newSub.ID}, nil
	}

	return nil, apperrors.Internal(nil, "Too many concurrent subscription updates, giving up")
}

// UnfollowUser supprime l'abonnement de subscriberID vers creatorID.
// On ne peut pas se désabonner d'un abonnement déjà expiré : il suffit de
// le laisser tomber, la résiliation n'aurait rien à interrompre.
func UnfollowUser(subscriberID, creatorID string) error {
	if subscriberID == "" {
		return apperrors.Unauthenticated("User not authenticated")
	}

	existing, err := GetByPair(creatorID, subscriberID, models.ServiceTypeFollow)
	if err != nil {
		return apperrors.Internal(err, "Error looking up subscription")
	}
	if existing == nil {
		return apperrors.NotFound("No subscription found for this creator")
	}

	if !existing.EndDate.After(timeNow()) {
		return apperrors.InvalidState("Subscription already expired, nothing to cancel")
	}

	// La résiliation est une suppression pure : l'abonnement et son arête
	// Follow disparaissent ensemble
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Subscription{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
		return tx.Where("follower_id = ? AND following_id = ?", subscriberID, creatorID).
			Delete(&models.Follow{}).Error
	})
	if err != nil {
		return apperrors.Internal(err, "Error cancelling subscription")
	}

	utils.LogInfo("Abonnement résilié")
	return nil
}
