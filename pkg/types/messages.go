package types

// Server -> Client, envelope {"msgType": <literal> | {<key>: <payload>}}
// waitingForPlayers:
//   [4]player_id|null
//
// joined:
//   player_id
//
// newHand:
//   player_ids_in_order: [4]player_id
//   player_scores: [{player_id, score}]
//   current_player_id: player_id
//   current_hand: number
//   hands: number
//
// receiveCards:
//   [card|null]
//
// nextPlayerToReplaceCards:
//   current_player_id: player_id
//
// nextPlayerToPlay:
//   current_player_id: player_id
//   stack: [4]card|null
//   current_cards: [card|null] // optional
//
// updateStackAndScore:
//   stack: [4]card|null
//   player_scores: [{player_id, score}]   // cumulative
//   current_scores: [{player_id, score}]  // this hand, optional
//
// state:
//   mode: "WAITING_FOR_PLAYERS" | "NEW_HAND" | "EXCHANGE_CARDS" | "PLAYING_HAND" | "END"
//   current_player_id: player_id|null
//   current_cards: [card|null]
//   current_stack: [4]card|null
//   player_scores, current_scores
//   current_hand, hands
//
// end:
//   player_scores: [{player_id, score}]
//
// playerError:
//   server rule rejection, string or object
//
// "timedOut"

// Client -> Server
// "getCurrentState" | "getCards" | "join" | "joinBot"
// replaceCards: [3]card
// play: card
