package api

const listTagsQuery = `
query {
  listTags: allTags {
    edges {
      node {
        id
        name
        description
        color
        status
        tagGroup {
          id
          name
          shortName
          description
          mode
          restrictToFactSheetTypes
        }
      }
    }
  }
}
`

const createTagGroupMutation = `
mutation ($name: String!,
          $mode: TagGroupModeEnum!,
          $restrictToFactSheetTypes: [FactSheetType!]!,
          $shortName: String,
          $description: String) {
  createTagGroup(name: $name,
                 mode: $mode,
                 restrictToFactSheetTypes: $restrictToFactSheetTypes,
                 shortName: $shortName,
                 description: $description) {
    id
  }
}
`

const updateTagGroupMutation = `
mutation ($id: ID!, $patches: [Patch]!) {
  updateTagGroup(id: $id, patches: $patches) {
    id
  }
}
`

const deleteTagGroupMutation = `
mutation ($id: ID!) {
  deleteTagGroup(id: $id) {
    id
  }
}
`

const createTagMutation = `
mutation ($name: String!,
          $description: String,
          $color: String!,
          $tagGroupId: ID) {
  createTag(name: $name,
            description: $description,
            color: $color,
            tagGroupId: $tagGroupId) {
    id
  }
}
`

const updateTagMutation = `
mutation ($id: ID!, $patches: [Patch]!) {
  updateTag(id: $id, patches: $patches) {
    id
  }
}
`

const deleteTagMutation = `
mutation ($id: ID!) {
  deleteTag(id: $id) {
    id
  }
}
`
