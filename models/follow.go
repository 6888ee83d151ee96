package models

import (
	"time"
)

// Follow est l'arête dénormalisée abonné -> créateur, utilisée pour les
// listes de followers/following sans toucher à la comptabilité des
// abonnements. Elle vit et meurt dans la même transaction que la
// Subscription associée.
type Follow struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FollowerID     string    `json:"followerId" gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair,priority:1"`
	FollowingID    string    `json:"followingId" gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair,priority:2"`
	SubscriptionID string    `json:"subscriptionId" gorm:"type:uuid"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (Follow) TableName() string {
	return "follows"
}
