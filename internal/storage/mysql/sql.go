package mysql

const insertSubmissionSQL = `
INSERT INTO booking_submissions
  (id, idempotency_key, guest_name, check_in, check_out, room_numbers,
   grand_total, total_advance, balance_due, outcome, invoice_numbers, error, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  outcome         = VALUES(outcome),
  invoice_numbers = VALUES(invoice_numbers),
  error           = VALUES(error)
`

// Newest first; matches idx_submissions_created.
const recentSubmissionsSQL = `
SELECT
  id,
  idempotency_key,
  guest_name,
  check_in,
  check_out,
  room_numbers,
  grand_total,
  total_advance,
  balance_due,
  outcome,
  invoice_numbers,
  error,
  created_at
FROM booking_submissions
ORDER BY created_at DESC, id DESC
LIMIT ?
`
