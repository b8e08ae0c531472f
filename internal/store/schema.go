package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL UNIQUE,
    description  TEXT,
    color        TEXT,
    is_default   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS accounts (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    type         TEXT NOT NULL,
    bank_name    TEXT,
    balance      TEXT NOT NULL DEFAULT '0',
    credit_limit TEXT
);

CREATE TABLE IF NOT EXISTS transactions (
    id           TEXT PRIMARY KEY,
    description  TEXT NOT NULL,
    amount       TEXT NOT NULL,
    type         TEXT NOT NULL,
    date         TEXT NOT NULL,
    category_id  TEXT NOT NULL REFERENCES categories(id),
    account_id   TEXT REFERENCES accounts(id),
    notes        TEXT
);

CREATE TABLE IF NOT EXISTS goals (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    description    TEXT,
    target_amount  TEXT NOT NULL,
    current_amount TEXT NOT NULL DEFAULT '0',
    target_date    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS spending_limits (
    id            TEXT PRIMARY KEY,
    category_id   TEXT NOT NULL UNIQUE REFERENCES categories(id),
    monthly_limit TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category_id);
`
