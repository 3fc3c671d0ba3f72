package driver

// GraphQL documents sent to the backend. The fragments mirror the wire
// shape the pipeline consumes; anything not selected here does not exist
// as far as the rest of the repository is concerned.

const positionFields = `
fragment PositionFields on positions {
  id
  shares
  account {
    id
    label
    image
  }
  term {
    id
    atom {
      id
      label
      data
      type
      value {
        thing { name description url }
        account { id label image }
        person { name description email url }
        organization { name description email url }
      }
    }
    triple {
      term_id
      counter_term_id
      subject { id label }
      predicate { id label }
      object { id label }
    }
    vaults(order_by: { curve_id: asc }) {
      term_id
      position_count
      total_shares
      current_share_price
    }
  }
  counter_term {
    id
    vaults(order_by: { curve_id: asc }) {
      term_id
      position_count
      total_shares
      current_share_price
    }
  }
}
`

const accountPositionsQuery = positionFields + `
query AccountPositions($accountId: String!) {
  positions(
    where: { account_id: { _eq: $accountId } }
    order_by: { shares: desc }
  ) {
    ...PositionFields
  }
}
`

const accountPositionsByPredicateQuery = positionFields + `
query AccountPositionsByPredicate($accountId: String!, $predicateId: String!) {
  positions(
    where: {
      account_id: { _eq: $accountId }
      term: { triple: { predicate_id: { _eq: $predicateId } } }
    }
    order_by: { shares: desc }
  ) {
    ...PositionFields
  }
}
`

const searchPositionsQuery = positionFields + `
query SearchPositions($query: String!, $limit: Int!) {
  positions(
    where: {
      term: {
        _or: [
          { atom: { label: { _ilike: $query } } }
          { triple: { subject: { label: { _ilike: $query } } } }
          { triple: { object: { label: { _ilike: $query } } } }
        ]
      }
    }
    order_by: { shares: desc }
    limit: $limit
  ) {
    ...PositionFields
  }
}
`

const accountMetadataQuery = `
query AccountMetadata($accountId: String!) {
  account(id: $accountId) {
    id
    label
    image
  }
}
`

const followTriplesQuery = `
query FollowTriples($accountId: String!, $predicateId: String!) {
  triples(
    where: {
      predicate_id: { _eq: $predicateId }
      subject: { value: { account: { id: { _eq: $accountId } } } }
    }
  ) {
    term_id
    counter_term_id
    subject { id label value { account { id label image } } }
    predicate { id label }
    object { id label value { account { id label image } } }
  }
}
`

const followerTriplesQuery = `
query FollowerTriples($accountId: String!, $predicateId: String!) {
  triples(
    where: {
      predicate_id: { _eq: $predicateId }
      object: { value: { account: { id: { _eq: $accountId } } } }
    }
  ) {
    term_id
    counter_term_id
    subject { id label value { account { id label image } } }
    predicate { id label }
    object { id label value { account { id label image } } }
  }
}
`
