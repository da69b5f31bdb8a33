package admin

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Credentials struct {
	Email    string
	Password string
}

// Overview is the dashboard summary.
type Overview struct {
	Users          int64            `json:"users"`
	Vendors        int64            `json:"vendors"`
	Products       int64            `json:"products"`
	Orders         int64            `json:"orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
}
