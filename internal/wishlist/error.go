package wishlist

const PgForeignKeyViolation = "23503"
