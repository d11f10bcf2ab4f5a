package seeder

import "kks-tracker/internal/config"

func Defaults(admin config.AdminConfig) []Seeder {
	out := []Seeder{ProgramTypesSeeder{}}
	if admin.Login != "" {
		out = append(out, AdminSeeder{Login: admin.Login, Password: admin.Password, FullName: admin.FullName})
	}
	return out
}
