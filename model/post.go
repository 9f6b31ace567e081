package model

import (
	"time"

	"gorm.io/gorm"
)

/*

Post is a member authored entry stored locally

Id: primary key, use to identify a post
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

RealmID: realm the post was published to
Environment: network partition the post lives on
AuthorID: member who wrote the post
Title: post's title in plain text
Content: post's body in plain text

*/
type Post struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	RealmID     string `gorm:"index"`
	Environment Environment
	AuthorID    string
	Title       string
	Content     string
}
