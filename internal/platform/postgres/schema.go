package postgres

// Constraint names declared by the migrations. The classifier matches on these,
// so they must stay in sync with migrations/*.sql.
const (
	// ConstraintUsersUserName is the unique constraint on users.user_name.
	ConstraintUsersUserName = "users_user_name_key"

	// ConstraintViewsPair is the primary key of the views table.
	ConstraintViewsPair = "views_user_id_post_id_pkey"

	// ConstraintLikesPair is the primary key of the likes table.
	ConstraintLikesPair = "likes_user_id_post_id_pkey"
)
