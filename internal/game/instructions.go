package game

// Instructions is the rules summary shown by front-ends
const Instructions = `Remove every card from the pyramid.

  • A card is free when no card in the row below overlaps it.
  • Select two free cards whose ranks add up to 13 to remove them
    (A=1, J=11, Q=12). A pair scores 20.
  • Kings are worth 13 on their own and are removed with one click.
    A King scores 10.
  • Click the stock to turn a card onto the waste. The top waste card
    is always free and pairs with pyramid cards.
  • When the stock runs out it is rebuilt from the cards you have not
    removed, so you can go through it again.

You win when the pyramid is empty. You lose when no pair or King is
available and nothing is left to draw.`
