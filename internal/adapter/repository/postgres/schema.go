package postgres

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id              UUID PRIMARY KEY,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL UNIQUE,
    password_hash   TEXT NOT NULL,
    avatar_image    TEXT NOT NULL DEFAULT '',
    monthly_income  NUMERIC(14, 2),
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS expenses (
    id              UUID PRIMARY KEY,
    owner_id        UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    description     TEXT NOT NULL,
    amount          NUMERIC(14, 2) NOT NULL CHECK (amount > 0),
    category        TEXT NOT NULL,
    date            TIMESTAMPTZ NOT NULL,
    type            TEXT NOT NULL CHECK (type IN ('income', 'expense')),
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_expenses_owner_date ON expenses(owner_id, date);
CREATE INDEX IF NOT EXISTS idx_expenses_owner_type ON expenses(owner_id, type);
`
