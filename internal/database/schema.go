package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for every table the application uses.  Statements
// are idempotent (CREATE TABLE IF NOT EXISTS) so EnsureSchema can run on
// every startup; ordering matters because of the foreign keys.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS theatres (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name        VARCHAR(191)    NOT NULL,
		location    VARCHAR(191)    NOT NULL,
		total_seats INT             NOT NULL,
		created_at  DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username       VARCHAR(64)     NOT NULL,
		email          VARCHAR(191)    NOT NULL,
		phone          VARCHAR(32)     NULL,
		password_hash  VARCHAR(100)    NOT NULL,
		role           ENUM('ADMIN','MANAGER','USER') NOT NULL DEFAULT 'USER',
		theatre_id     BIGINT UNSIGNED NULL,
		loyalty_points BIGINT          NOT NULL DEFAULT 0,
		created_at     DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email),
		CONSTRAINT fk_users_theatre FOREIGN KEY (theatre_id) REFERENCES theatres (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64)        NOT NULL,
		expires_at DATETIME        NOT NULL,
		revoked_at DATETIME        NULL,
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		theatre_id         BIGINT UNSIGNED NOT NULL,
		title              VARCHAR(191)    NOT NULL,
		duration_min       INT             NOT NULL,
		cast_line          VARCHAR(500)    NOT NULL DEFAULT '',
		genre              VARCHAR(64)     NOT NULL DEFAULT '',
		show_times         VARCHAR(500)    NOT NULL,
		ticket_price_cents BIGINT          NOT NULL,
		created_at         DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_movies_theatre (theatre_id),
		CONSTRAINT fk_movies_theatre FOREIGN KEY (theatre_id) REFERENCES theatres (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		reference          CHAR(36)        NOT NULL,
		user_id            BIGINT UNSIGNED NOT NULL,
		movie_id           BIGINT UNSIGNED NOT NULL,
		theatre_id         BIGINT UNSIGNED NOT NULL,
		seats_booked       INT             NOT NULL,
		show_time          VARCHAR(64)     NOT NULL,
		total_amount_cents BIGINT          NOT NULL,
		points_earned      BIGINT          NOT NULL DEFAULT 0,
		created_at         DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bookings_reference (reference),
		KEY idx_bookings_user (user_id),
		KEY idx_bookings_theatre (theatre_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_bookings_movie FOREIGN KEY (movie_id) REFERENCES movies (id) ON DELETE CASCADE,
		CONSTRAINT fk_bookings_theatre FOREIGN KEY (theatre_id) REFERENCES theatres (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seats (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		theatre_id  BIGINT UNSIGNED NOT NULL,
		movie_id    BIGINT UNSIGNED NOT NULL,
		show_time   VARCHAR(64)     NOT NULL,
		seat_row    VARCHAR(4)      NOT NULL,
		seat_number INT             NOT NULL,
		booking_id  BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_show_seat (theatre_id, movie_id, show_time, seat_row, seat_number),
		KEY idx_seats_booking (booking_id),
		CONSTRAINT fk_seats_booking FOREIGN KEY (booking_id) REFERENCES bookings (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS snacks (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		theatre_id  BIGINT UNSIGNED NOT NULL,
		name        VARCHAR(191)    NOT NULL,
		price_cents BIGINT          NOT NULL,
		available   TINYINT(1)      NOT NULL DEFAULT 1,
		PRIMARY KEY (id),
		KEY idx_snacks_theatre (theatre_id),
		CONSTRAINT fk_snacks_theatre FOREIGN KEY (theatre_id) REFERENCES theatres (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS food_orders (
		id                BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id           BIGINT UNSIGNED NOT NULL,
		booking_id        BIGINT UNSIGNED NOT NULL,
		snack_id          BIGINT UNSIGNED NOT NULL,
		quantity          INT             NOT NULL,
		total_price_cents BIGINT          NOT NULL,
		order_date        DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_food_orders_user (user_id),
		CONSTRAINT fk_food_orders_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_food_orders_booking FOREIGN KEY (booking_id) REFERENCES bookings (id) ON DELETE CASCADE,
		CONSTRAINT fk_food_orders_snack FOREIGN KEY (snack_id) REFERENCES snacks (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id     BIGINT UNSIGNED NOT NULL,
		theatre_id  BIGINT UNSIGNED NOT NULL,
		movie_id    BIGINT UNSIGNED NULL,
		rating      INT             NOT NULL,
		comment     VARCHAR(1000)   NOT NULL DEFAULT '',
		review_type ENUM('movie','theatre') NOT NULL,
		created_at  DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_reviews_theatre (theatre_id),
		KEY idx_reviews_movie (movie_id),
		CONSTRAINT fk_reviews_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_reviews_theatre FOREIGN KEY (theatre_id) REFERENCES theatres (id) ON DELETE CASCADE,
		CONSTRAINT fk_reviews_movie FOREIGN KEY (movie_id) REFERENCES movies (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  It is safe to call on every
// startup; existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
