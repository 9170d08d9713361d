package response_models

type DashboardResponse struct {
	Accounts        []AccountResponse `json:"accounts"`
	TotalUsers      int               `json:"total_users"`
	UsersWithPhotos int               `json:"users_with_photos"`
}
