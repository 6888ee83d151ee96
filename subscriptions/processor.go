package subscriptions

import (
	"errors"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/utils"
)

// TransactionCheck résultat de la vérification d'existence d'une transaction
type TransactionCheck struct {
	Found          bool                      `json:"found"`
	SubscriptionID string                    `json:"subscriptionId,omitempty"`
	Status         models.SubscriptionStatus `json:"status,omitempty"`
	EndDate        *time.Time                `json:"endDate,omitempty"`
}

// ProcessResult résultat du traitement d'un paiement
type ProcessResult struct {
	AlreadyExists  bool                      `json:"alreadyExists"`
	SubscriptionID string                    `json:"subscriptionId"`
	Status         models.SubscriptionStatus `json:"status"`
	Renewed        bool                      `json:"renewed"`
	Reactivated    bool                      `json:"reactivated"`
}

// CheckTransaction vérifie, en lecture seule, si un abonnement porte déjà
// cet id de transaction. C'est le test que le chemin de redirection et le
// polling client utilisent pour savoir si le webhook est déjà passé.
func CheckTransaction(transactionID string) (*TransactionCheck, error) {
	if transactionID == "" {
		return nil, apperrors.InvalidState("Transaction id is required")
	}

	sub, err := GetByTransactionID(transactionID)
	if err != nil {
		return nil, apperrors.Internal(err, "Error checking transaction")
	}
	if sub == nil {
		return &TransactionCheck{Found: false}, nil
	}

	return &TransactionCheck{
		Found:          true,
		SubscriptionID: sub.ID,
		Status:         sub.EffectiveStatus(timeNow()),
		EndDate:        &sub.EndDate,
	}, nil
}

// ProcessPayment applique un paiement vérifié à l'abonnement correspondant,
// au plus une fois par id de transaction.
//
// Le gateway rejoue ses notifications tant qu'il n'a pas reçu de 2xx, et le
// webhook peut courir contre la redirection navigateur : toute relivraison
// du même id doit être un no-op. La garde est double : vérification
// d'existence avant mutation, puis contrainte d'unicité sur transaction_id
// dont la violation est relue comme « déjà traité ».
func ProcessPayment(transactionID, creatorID, subscriberID string, startDate *time.Time, amountPaid int) (*ProcessResult, error) {
	if transactionID == "" {
		return nil, apperrors.InvalidState("Transaction id is required")
	}

	existing, err := GetByTransactionID(transactionID)
	if err != nil {
		return nil, apperrors.Internal(err, "Error checking transaction")
	}
	if existing != nil {
		utils.LogPayment(transactionID, "Transaction déjà traitée, aucun changement")
		return &ProcessResult{
			AlreadyExists:  true,
			SubscriptionID: existing.ID,
			Status:         existing.EffectiveStatus(timeNow()),
		}, nil
	}

	result, err := FollowUser(subscriberID, creatorID, FollowOptions{
		TransactionID: &transactionID,
		StartDate:     startDate,
		AmountPaid:    amountPaid,
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.CodeConflict {
			// Livraison concurrente du même id : l'autre écrivain a gagné la
			// course, l'état final est le même
			applied, readErr := GetByTransactionID(transactionID)
			if readErr == nil && applied != nil {
				utils.LogPayment(transactionID, "Transaction appliquée par une livraison concurrente")
				return &ProcessResult{
					AlreadyExists:  true,
					SubscriptionID: applied.ID,
					Status:         applied.EffectiveStatus(timeNow()),
				}, nil
			}
		}
		return nil, err
	}

	utils.LogPayment(transactionID, "Paiement appliqué à l'abonnement")
	return &ProcessResult{
		AlreadyExists:  false,
		SubscriptionID: result.SubscriptionID,
		Status:         models.SubscriptionActive,
		Renewed:        result.Renewed,
		Reactivated:    result.Reactivated,
	}, nil
}
