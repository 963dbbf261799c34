package user

import "github.com/sofuetakuma112/bb-hono/internal/database"

func ExistsByEmail(email string) bool {
	var count int64
	database.DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func ExistsByID(id string) bool {
	var count int64
	database.DB.Model(&User{}).Where("id = ?", id).Count(&count)
	return count > 0
}

func IsAdmin(id string) (bool, error) {
	var u User
	if err := database.DB.Select("is_admin").Where("id = ?", id).First(&u).Error; err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}
