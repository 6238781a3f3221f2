package config

// DefaultYAML is used when no config file is found.
const DefaultYAML = `
classifier:
  prefix_length: 1000
  paylah_filename_glob: "PDF文档*.pdf"
  cashback_phrase: POSB Cashback Bonus Statement
  credit_card_phrase: "POSB everyday CARD NO.:"
  account_phrase: Current and Savings Account
  paylah_phrase: PayLah!
paylah:
  method: text
  starter: "PayLah! Wallet No. %s"
  transactions_start: NEW TRANSACTION
  transactions_end: Total
  table_end: "Total :"
  disclaimer: INFORMATION ON YOUR DBS PAYLAH!
  reference_prefix: "REF NO:."
  reference_widths:
    - prefix: MB
      width: 19
  default_reference_width: 23
  header_area: [18.96, 7.34, 24.28, 93.47]
  first_page_area: [37.53, 8.38, 95.4, 94.02]
  continuation_area: [15.01, 6.85, 93.93, 94.18]
  columns: [15.2, 80.48]
credit_card:
  transactions_start: NEW TRANSACTIONS
  transactions_end: "SUB-TOTAL:"
archive:
  gcs_prefix: statements
`
