package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "ACTIVE"
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
)

// ServiceTypeFollow est le seul type de service facturé pour le moment
const ServiceTypeFollow = "follow"

// SubscriptionDuration durée d'une fenêtre d'abonnement, renouvellement compris
const SubscriptionDuration = 30 * 24 * time.Hour

// Subscription représente la relation payante entre un abonné et un créateur.
//
// Le champ Status est purement indicatif (il est rattrapé par le sweep
// quotidien) : pour toute décision d'accès, l'état réel se recalcule
// toujours à partir de EndDate. Voir EffectiveStatus.
type Subscription struct {
	ID            string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SubscriberID  string             `json:"subscriberId" gorm:"type:uuid;not null;uniqueIndex:idx_sub_pair,priority:2"`
	CreatorID     string             `json:"creatorId" gorm:"type:uuid;not null;uniqueIndex:idx_sub_pair,priority:1"`
	ServiceType   string             `json:"serviceType" gorm:"type:varchar(20);default:'follow';uniqueIndex:idx_sub_pair,priority:3"`
	StartDate     time.Time          `json:"startDate"`
	EndDate       time.Time          `json:"endDate" gorm:"index"`
	Status        SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	AmountPaid    int                `json:"amountPaid"` // en XAF
	TransactionID *string            `json:"transactionId,omitempty" gorm:"uniqueIndex"`
	RenewalCount  int                `json:"renewalCount" gorm:"default:0"`
	Version       int                `json:"-" gorm:"default:1"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// EffectiveStatus recalcule le statut réel à partir de EndDate.
// Le champ Status stocké peut être en retard sur la réalité entre deux
// passages du sweep, il ne doit jamais servir au contrôle d'accès.
func (s *Subscription) EffectiveStatus(now time.Time) SubscriptionStatus {
	if now.After(s.EndDate) {
		return SubscriptionExpired
	}
	return SubscriptionActive
}

// IsActive indique si l'abonnement donne accès au contenu à l'instant donné
func (s *Subscription) IsActive(now time.Time) bool {
	return s.EffectiveStatus(now) == SubscriptionActive
}

func (Subscription) TableName() string {
	return "subscriptions"
}
